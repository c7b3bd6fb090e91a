package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
)

// Response é o envelope básico de toda resposta da API:
// {"success": bool, "message": "..."} — a mensagem é localizada
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Fail escreve uma resposta de falha com a mensagem traduzida da
// chave i18n informada
func Fail(c *gin.Context, status int, messageKey string) {
	c.JSON(status, Response{
		Success: false,
		Message: T(c, messageKey),
	})
}

// FailFromError escreve uma resposta de falha a partir de um erro de
// negócio (a mensagem do erro é a chave i18n). Erros que não são de
// negócio viram 500 genérico — detalhes ficam só no log.
func FailFromError(c *gin.Context, status int, err error) {
	if !errors.IsBusiness(err) {
		Internal(c)
		return
	}
	Fail(c, status, err.Error())
}

// Internal escreve a resposta genérica de erro de servidor
func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "error.internal")
}
