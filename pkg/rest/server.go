// Package rest provides the REST API to generate documents remotely.
// Only the native SVG format travels over the wire; rendering to other
// formats stays on the caller's side.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

type server struct {
	router *mux.Router
	sync.Mutex
}

// Error is the type that is returned in case of an error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf takes a status code, a ResponseWriter and a format string.
// It sets up the REST error response and writes it to the
// ResponseWriter.
func Errorf(code int, w http.ResponseWriter, format string, a ...interface{}) (n int, err error) {
	e := Error{
		Code:    http.StatusText(code),
		Message: fmt.Sprintf(format, a...),
	}

	b, err := json.Marshal(&e)
	if err != nil {
		return 0, err
	}

	w.WriteHeader(code)
	return w.Write(b)
}

func unmarshalBody(w http.ResponseWriter, r *http.Request, i interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s := "Could not read body"
		_, _ = Errorf(http.StatusBadRequest, w, s)
		return errors.New(s)
	}

	if err := json.Unmarshal(body, i); err != nil {
		s := "Could not unmarshal body"
		_, _ = Errorf(http.StatusBadRequest, w, s)
		return errors.New(s)
	}

	return nil
}

// ListenAndServe is the entry point for the REST API.
func ListenAndServe(addr string, corsOrigins []string) {
	s := &server{
		router: mux.NewRouter(),
	}

	s.routes()

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); sent && err != nil {
		log.Warnf("Failed to notify systemd: %v", err)
	}

	log.Infof("Listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(s.router)))
}
