package rest

func (s *server) routes() {
	s.router.HandleFunc("/api/v1/status", s.Status()).Methods("GET")
	s.router.HandleFunc("/api/v1/generate", s.Generate()).Methods("POST")
}
