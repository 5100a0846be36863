package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mmcdole/reel/internal/domain"
)

// Schemas mirror the server's published request/response shapes. Extra
// properties are allowed so the server can grow its payloads.
var (
	credentialsSchema = required(openapi3.NewObjectSchema().
				WithProperty("email", openapi3.NewStringSchema().WithPattern(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)).
				WithProperty("password", openapi3.NewStringSchema().WithMinLength(1)),
		"email", "password")

	userSchema = required(openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty("email", openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty("name", openapi3.NewStringSchema()),
		"id", "email")

	seriesSchema = openapi3.NewObjectSchema().WithNullable().
			WithProperty("title", openapi3.NewStringSchema())

	episodeSchema = required(openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty("title", openapi3.NewStringSchema()).
			WithProperty("description", openapi3.NewStringSchema()).
			WithProperty("thumbnailUrl", openapi3.NewStringSchema()).
			WithProperty("duration", openapi3.NewFloat64Schema().WithMin(0)).
			WithProperty("series", seriesSchema),
		"id", "title")
)

// Named per endpoint, matching how the server documents them
var (
	signInRequestBody      = credentialsSchema
	signUpRequestBody      = credentialsSchema
	signInResponse         = userSchema
	signUpResponse         = userSchema
	getUserResponse        = userSchema
	getEpisodeByIDResponse = episodeSchema
)

// credentialsBody is the wire form of sign-in and sign-up requests
type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the wire form of a user record
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// episodeResponse is the wire form of an episode
type episodeResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Duration     float64 `json:"duration"`
	Series       *struct {
		Title string `json:"title"`
	} `json:"series"`
}

// required marks properties as required
func required(schema *openapi3.Schema, names ...string) *openapi3.Schema {
	schema.Required = names
	return schema
}

// validate checks v against schema using its JSON representation
func validate(schema *openapi3.Schema, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	return schema.VisitJSON(generic)
}

// parse validates a raw JSON body against schema and then decodes it into dest
func parse(schema *openapi3.Schema, body []byte, dest any) error {
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	if err := schema.VisitJSON(generic); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return nil
}

// newCredentialsBody validates credentials before they are sent
func newCredentialsBody(schema *openapi3.Schema, creds domain.Credentials) (credentialsBody, error) {
	body := credentialsBody{Email: creds.Email, Password: creds.Password}
	if err := validate(schema, body); err != nil {
		return credentialsBody{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return body, nil
}

// parseUser decodes and validates a user payload
func parseUser(schema *openapi3.Schema, body []byte) (*domain.User, error) {
	var resp userResponse
	if err := parse(schema, body, &resp); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:    resp.ID,
		Email: resp.Email,
		Name:  resp.Name,
	}, nil
}

// parseEpisode decodes and validates an episode payload
func parseEpisode(body []byte) (*domain.Episode, error) {
	var resp episodeResponse
	if err := parse(getEpisodeByIDResponse, body, &resp); err != nil {
		return nil, err
	}
	ep := &domain.Episode{
		ID:           resp.ID,
		Title:        resp.Title,
		Description:  resp.Description,
		ThumbnailURL: resp.ThumbnailURL,
		Duration:     time.Duration(resp.Duration * float64(time.Second)),
	}
	if resp.Series != nil {
		ep.SeriesTitle = resp.Series.Title
	}
	return ep, nil
}
