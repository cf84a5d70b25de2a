// Package teacher contains the HTTP handlers for the /professores resource.
//
// Each exported function is a factory: it receives the storage once at route
// registration and returns the http.HandlerFunc the router calls on every
// request.
//
//	router.HandleFunc("POST /professores", teacher.New(storage))
package teacher

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/aanand-mishra/professores-api/internal/logger"
	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/types"
	"github.com/aanand-mishra/professores-api/internal/utils/response"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// validate reports field errors by their JSON key (nome, idade...) rather
// than the Go field name. A *validator.Validate is safe for concurrent use
// and caches struct metadata, so one instance serves all requests.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New handles POST /professores.
//
// Request body:
//
//	{ "nome": "João Silva", "idade": 40, "materia": "Análise de Sistemas", "observacoes": "..." }
//
// nome, idade and materia must be present; observacoes defaults to "".
// Only presence is checked, not ranges or lengths.
//
// 201 { "message": "Professor criado com sucesso!", "id": 1 }
// 400 empty body, malformed JSON or a missing key
// 500 database error
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Log.WithField("op", "create")
		log.Info("creating a teacher")

		var req types.NewTeacher
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		err := dec.Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.MsgInvalidData, errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.MsgInvalidData, err))
			return
		}
		// The body must hold exactly one JSON value, as on update.
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.MsgInvalidData, errors.New("unexpected data after JSON body")))
			return
		}

		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.MsgInvalidData, err))
			return
		}

		id, err := storage.CreateTeacher(r.Context(), req.Teacher())
		if err != nil {
			log.WithError(err).Error("error creating teacher")
			response.WriteJSON(w, http.StatusInternalServerError, response.ServerError(err))
			return
		}

		log.WithField("id", id).Info("teacher created")
		response.WriteJSON(w, http.StatusCreated, createdResponse{
			Message: response.MsgCreated,
			ID:      id,
		})
	}
}

type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// GetList handles GET /professores. Returns [] when there are no teachers.
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Log.WithField("op", "list")
		log.Info("getting all teachers")

		teachers, err := storage.GetTeachers(r.Context())
		if err != nil {
			log.WithError(err).Error("error getting teachers")
			response.WriteJSON(w, http.StatusInternalServerError, response.ServerError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, teachers)
	}
}

// GetByID handles GET /professores/{id}.
//
// 200 { "id": 1, "nome": "João Silva", "idade": 40, "materia": "...", "observacoes": "" }
// 400 id is not an integer
// 404 no teacher with that id
// 500 database error
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log := logger.Log.WithFields(logrus.Fields{"op": "get", "id": id})
		log.Info("getting a teacher")

		t, err := storage.GetTeacherByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, log, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, t)
	}
}

// Update handles PUT /professores/{id}.
//
// Only the keys present in the body are written; the others keep their
// stored value. The body must be a non-empty JSON object.
//
// 200 { "message": "Professor atualizado com sucesso!" }
// 400 invalid id, empty or malformed body
// 404 no teacher with that id
// 500 database error
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log := logger.Log.WithFields(logrus.Fields{"op": "update", "id": id})
		log.Info("updating a teacher")

		patch, err := decodePatch(w, r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(response.MsgInvalidData, err))
			return
		}

		exists, err := storage.TeacherExists(r.Context(), id)
		if err != nil {
			writeStorageError(w, log, err)
			return
		}
		if !exists {
			response.WriteJSON(w, http.StatusNotFound, response.Message(response.MsgNotFound))
			return
		}

		if err := storage.UpdateTeacherByID(r.Context(), id, patch); err != nil {
			writeStorageError(w, log, err)
			return
		}

		log.Info("teacher updated")
		response.WriteJSON(w, http.StatusOK, response.Message(response.MsgUpdated))
	}
}

// Delete handles DELETE /professores/{id}.
//
// 200 { "message": "Professor deletado com sucesso!" }
// 400 invalid id
// 404 no teacher with that id
// 500 database error
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		log := logger.Log.WithFields(logrus.Fields{"op": "delete", "id": id})
		log.Info("deleting a teacher")

		t, err := storage.GetTeacherByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, log, err)
			return
		}

		if err := storage.DeleteTeacherByID(r.Context(), t.ID); err != nil {
			writeStorageError(w, log, err)
			return
		}

		log.WithField("nome", t.Name).Info("teacher deleted")
		response.WriteJSON(w, http.StatusOK, response.Message(response.MsgDeleted))
	}
}

// parseID reads the {id} path segment. On failure it writes a 400 and
// returns false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(response.MsgInvalidID, errors.New("id must be an integer")))
		return 0, false
	}
	return id, true
}

// decodePatch reads an update body. The body must be a JSON object with at
// least one key; unknown keys are ignored and null values count as absent.
func decodePatch(w http.ResponseWriter, r *http.Request) (types.TeacherPatch, error) {
	var patch types.TeacherPatch

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return patch, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return patch, errors.New("request body is empty")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return patch, err
	}
	if len(keys) == 0 {
		return patch, errors.New("request body is empty")
	}

	if err := json.Unmarshal(body, &patch); err != nil {
		return patch, err
	}
	return patch, nil
}

// writeStorageError maps storage.ErrNotFound to 404 and anything else to 500.
func writeStorageError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("teacher not found")
		response.WriteJSON(w, http.StatusNotFound, response.Message(response.MsgNotFound))
		return
	}

	log.WithError(err).Error("storage error")
	response.WriteJSON(w, http.StatusInternalServerError, response.ServerError(err))
}
