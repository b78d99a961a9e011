package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitMethod(t *testing.T) {
	t.Run("accepts a Yandex Forms link", func(t *testing.T) {
		method, defErr := NewSubmitMethod(SubmitMethodRequest{
			Type: "yandex_forms",
			URL:  "https://forms.yandex.ru/u/abc123/",
		})
		require.Nil(t, defErr)
		assert.Equal(t, SubmitMethodYandexForms, method.Type)
	})

	t.Run("rejects a foreign URL", func(t *testing.T) {
		_, defErr := NewSubmitMethod(SubmitMethodRequest{
			Type: "yandex_forms",
			URL:  "https://example.com/form",
		})
		require.NotNil(t, defErr)
		assert.Equal(t, DefInvalidSubmitMethod, defErr.Code)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, defErr := NewSubmitMethod(SubmitMethodRequest{Type: "carrier_pigeon"})
		require.NotNil(t, defErr)
		assert.Equal(t, DefInvalidSubmitMethod, defErr.Code)
	})
}
