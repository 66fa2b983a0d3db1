/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fake provides an in-process inventory API for tests.  It behaves
// like the real service for the routes the smoke checks use, and individual
// operations can be overridden with canned responses to simulate failures.
package fake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nscaledev/inventory-smoke/pkg/openapi"
)

type Operation string

const (
	OpRegister       Operation = "register"
	OpLogin          Operation = "login"
	OpCreateProduct  Operation = "create-product"
	OpUpdateQuantity Operation = "update-quantity"
	OpListProducts   Operation = "list-products"
)

type product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type cannedResponse struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	validator *openapi.Validator

	lock       sync.Mutex
	users      map[string]string
	tokens     map[string]string
	products   []*product
	overrides  map[Operation]cannedResponse
	calls      map[Operation]int
	violations []error
}

// NewServer starts a server.  Callers must Close it.
func NewServer() (*Server, error) {
	validator, err := openapi.NewValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		validator: validator,
		users:     map[string]string{},
		tokens:    map[string]string{},
		overrides: map[Operation]cannedResponse{},
		calls:     map[Operation]int{},
	}

	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(s.validate)
		r.Post("/register", s.operation(OpRegister, s.register))
		r.Post("/login", s.operation(OpLogin, s.login))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate, s.validate)
		r.Get("/products", s.operation(OpListProducts, s.listProducts))
		r.Post("/products", s.operation(OpCreateProduct, s.createProduct))
		r.Put("/products/{id}/quantity", s.operation(OpUpdateQuantity, s.updateQuantity))
	})

	s.Server = httptest.NewServer(r)

	return s, nil
}

// AddUser registers an account as if a previous run had created it.
func (s *Server) AddUser(username, password string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.users[username] = password
}

// AddProduct seeds the inventory.
func (s *Server) AddProduct(name string, quantity int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.products = append(s.products, &product{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
	})
}

// Override makes the operation respond with a canned status and body.
func (s *Server) Override(op Operation, status int, body string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.overrides[op] = cannedResponse{
		status: status,
		body:   body,
	}
}

// Calls returns how many times the operation was invoked.
func (s *Server) Calls(op Operation) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.calls[op]
}

// SchemaViolations returns requests rejected for not matching the schema.
func (s *Server) SchemaViolations() []error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]error(nil), s.violations...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) operation(op Operation, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		s.calls[op]++
		canned, ok := s.overrides[op]
		s.lock.Unlock()

		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(canned.status)
			_, _ = w.Write([]byte(canned.body))

			return
		}

		handler(w, r)
	}
}

func (s *Server) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.validator.ValidateRequest(r); err != nil {
			s.lock.Lock()
			s.violations = append(s.violations, err)
			s.lock.Unlock()

			writeError(w, http.StatusBadRequest, err.Error())

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header not provided")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "Authorization header format must be Bearer {access_token}")
			return
		}

		s.lock.Lock()
		_, ok := s.tokens[parts[1]]
		s.lock.Unlock()

		if !ok {
			writeError(w, http.StatusUnauthorized, "the token is invalid")
			return
		}

		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var c credentials

	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.users[c.Username]; ok {
		writeError(w, http.StatusConflict, "user already exist")
		return
	}

	s.users[c.Username] = c.Password

	writeJSON(w, http.StatusCreated, "account created successfully")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var c credentials

	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	password, ok := s.users[c.Username]
	if !ok {
		writeError(w, http.StatusInternalServerError, "No User Found")
		return
	}

	if password != c.Password {
		writeError(w, http.StatusInternalServerError, "Login or Password is incorrect")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = c.Username

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p product

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p.ID = uuid.NewString()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.products = append(s.products, &p)

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "Product added successfully",
		"product_id": p.ID,
	})
}

func (s *Server) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var request struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			p.Quantity = request.Quantity

			writeJSON(w, http.StatusOK, p)

			return
		}
	}

	writeError(w, http.StatusNotFound, "Product not found or update failed")
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	products := make([]*product, len(s.products))
	copy(products, s.products)

	writeJSON(w, http.StatusOK, products)
}
