// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every response body that is not a teacher or a list of teachers has the
// same shape:
//
//	{ "message": "Professor não encontrado!" }
//	{ "message": "Erro de servidor", "error": "GetTeachers: query: ..." }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope for messages and errors.
type Response struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Wire-visible messages.
const (
	MsgCreated        = "Professor criado com sucesso!"
	MsgUpdated        = "Professor atualizado com sucesso!"
	MsgDeleted        = "Professor deletado com sucesso!"
	MsgInvalidData    = "Dados inválidos!"
	MsgNotFound       = "Professor não encontrado!"
	MsgServerError    = "Erro de servidor"
	MsgInvalidID      = "ID inválido!"
	MsgUnavailable    = "Serviço indisponível"
	MsgRequestTimeout = "Tempo de requisição esgotado"
)

// WriteJSON writes data as JSON with the given HTTP status code.
// Header() → WriteHeader() → body, in that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message is a body with only a message.
func Message(msg string) Response {
	return Response{Message: msg}
}

// GeneralError pairs a message with the error's text as detail.
func GeneralError(msg string, err error) Response {
	return Response{
		Message: msg,
		Error:   err.Error(),
	}
}

// ServerError is the body of every 500 response.
func ServerError(err error) Response {
	return GeneralError(MsgServerError, err)
}

// ValidationError turns validator field errors into a single detail string,
// e.g. "field nome is required, field idade is required".
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Message: MsgInvalidData,
		Error:   strings.Join(errMessages, ", "),
	}
}
