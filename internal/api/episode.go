package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/reel/internal/domain"
)

// EpisodeClient implements domain.EpisodeRepository
type EpisodeClient struct {
	transport *Transport
}

// NewEpisodeClient creates a new episode API client
func NewEpisodeClient(transport *Transport) *EpisodeClient {
	return &EpisodeClient{transport: transport}
}

// FetchEpisode loads a single episode by ID
func (c *EpisodeClient) FetchEpisode(ctx context.Context, id string) (*domain.Episode, error) {
	switch id {
	case "":
		return nil, fmt.Errorf("%w: empty episode id", domain.ErrInvalidRequest)
	case ".", "..":
		return nil, fmt.Errorf("%w: episode id %q", domain.ErrInvalidRequest, id)
	}

	resp, err := c.transport.Do(ctx, http.MethodGet, "/episodes/"+url.PathEscape(id), nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEpisodeNotFound, id)
		}
		return nil, err
	}
	return parseEpisode(resp)
}
