package reclaimtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// newRouter creates the fake API routes.
func newRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.recovery)
	r.Use(s.logging)
	r.Use(s.recorder)
	r.Use(s.injectFailures)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.bearerAuth)

		r.Get("/tasks", s.listTasks)
		r.Post("/tasks", s.createTask)
		r.Get("/tasks/{id}", s.getTask)
		r.Patch("/tasks/{id}", s.updateTask)
		r.Delete("/tasks/{id}", s.deleteTask)

		r.Get("/timeschemes", s.listTimeSchemes)
	})

	return r
}

// listTasks handles GET /tasks.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tasks := make([]map[string]interface{}, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, copyTask(s.tasks[id]))
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, tasks)
}

// createTask handles POST /tasks.
func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Invalid JSON body"})
		return
	}

	title, _ := attrs["title"].(string)
	if strings.TrimSpace(title) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "title is required"})
		return
	}
	delete(attrs, "id")

	s.mu.Lock()
	id := s.insertTask(attrs)
	task := copyTask(s.tasks[id])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, task)
}

// getTask handles GET /tasks/{id}.
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.Task(chi.URLParam(r, "id"))
	if !ok {
		writeNotFound(w)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// updateTask handles PATCH /tasks/{id}. Keys sent as null are removed.
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "Invalid JSON body"})
		return
	}

	id := chi.URLParam(r, "id")

	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		writeNotFound(w)
		return
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		if v == nil {
			delete(task, k)
			continue
		}
		task[k] = v
	}
	task["updated"] = time.Now().UTC().Format(time.RFC3339)
	result := copyTask(task)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, result)
}

// deleteTask handles DELETE /tasks/{id}.
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTimeSchemes handles GET /timeschemes.
func (s *Server) listTimeSchemes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	schemes := append([]map[string]interface{}{}, s.schemes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, schemes)
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}
