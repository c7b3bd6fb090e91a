package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound    = errors.New("error.user_not_found")
	ErrCodeNotFound    = errors.New("error.code_not_found")
	ErrCodeNotUsable   = errors.New("error.code_not_usable")
	ErrCodeConsumed    = errors.New("error.code_consumed")
	ErrMissingFields   = errors.New("error.missing_fields")
	ErrUserBanned      = errors.New("error.user_banned")
	ErrForbidden       = errors.New("error.forbidden")
	ErrUnknownAction   = errors.New("error.unknown_action")
	ErrHistoryFailed   = errors.New("error.history_failed")
	ErrMessageRejected = errors.New("error.message_rejected")
)

// IsBusiness verifica se um erro é um dos erros de negócio acima.
// Erros que não são de negócio são tratados como falha de armazenamento
// e viram resposta genérica de servidor.
func IsBusiness(err error) bool {
	for _, b := range []error{
		ErrUserNotFound,
		ErrCodeNotFound,
		ErrCodeNotUsable,
		ErrCodeConsumed,
		ErrMissingFields,
		ErrUserBanned,
		ErrForbidden,
		ErrUnknownAction,
		ErrHistoryFailed,
		ErrMessageRejected,
	} {
		if errors.Is(err, b) {
			return true
		}
	}
	return false
}
