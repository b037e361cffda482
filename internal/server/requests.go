package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator"

	"sportsmeet-portal/internal/models"
)

const maxBodyBytes = 1 << 20

var structValidator = validator.New()

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

type slotsRequest struct {
	Count *int `json:"count" validate:"required"`
}

type fieldRequest struct {
	Field string `json:"field" validate:"required,oneof=name gender age designation phone"`
	Value string `json:"value" validate:"max=200"`
}

type sportRequest struct {
	Sport string `json:"sport" validate:"max=64"`
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return BadRequest("invalid JSON body")
	}
	if err := structValidator.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) *APIError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return BadRequest("invalid request")
	}
	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "Field is required"
	case "max":
		msg = "Field exceeds maximum length"
	case "oneof":
		msg = "Field has an unsupported value"
	default:
		msg = "Invalid value"
	}
	return BadRequest(msg + ": " + fe.Field())
}

func teamParam(r *http.Request) (int, error) {
	team, err := strconv.Atoi(chi.URLParam(r, "team"))
	if err != nil || !models.ValidTeam(team) {
		return 0, NotFound("unknown team")
	}
	return team, nil
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, BadRequest("invalid " + name)
	}
	return v, nil
}
