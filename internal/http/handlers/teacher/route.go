package teacher

import (
	"net/http"

	"github.com/aanand-mishra/professores-api/internal/storage"
)

// RegisterRoutes mounts the /professores routes on mux.
//
//	GET    /professores        list all teachers
//	GET    /professores/{id}   get one teacher
//	POST   /professores        create a teacher
//	PUT    /professores/{id}   partially update a teacher
//	DELETE /professores/{id}   delete a teacher
func RegisterRoutes(mux *http.ServeMux, s storage.Storage) {
	mux.HandleFunc("GET /professores", GetList(s))
	mux.HandleFunc("GET /professores/{id}", GetByID(s))
	mux.HandleFunc("POST /professores", New(s))
	mux.HandleFunc("PUT /professores/{id}", Update(s))
	mux.HandleFunc("DELETE /professores/{id}", Delete(s))
}
