package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the API answers 404 for a resource.
var ErrNotFound = errors.New("pokeapi: resource not found")

// Client is a read-only HTTP client for the PokeAPI REST service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client rooted at baseURL (for example
// "https://pokeapi.co/api/v2").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call pokeapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", rawURL, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pokeapi returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// List returns the bulk name/url listing.
func (c *Client) List(ctx context.Context, limit int) (*ListResponse, error) {
	var list ListResponse
	if err := c.get(ctx, c.baseURL+"/pokemon?limit="+strconv.Itoa(limit), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Pokemon fetches one pokemon by name or numeric id.
func (c *Client) Pokemon(ctx context.Context, nameOrID string) (*Pokemon, error) {
	var p Pokemon
	if err := c.get(ctx, c.resourceURL("pokemon", nameOrID), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Species follows the species.url reference of a pokemon record.
func (c *Client) Species(ctx context.Context, speciesURL string) (*Species, error) {
	var s Species
	if err := c.get(ctx, speciesURL, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// EvolutionChain follows the evolution_chain.url reference of a species.
func (c *Client) EvolutionChain(ctx context.Context, chainURL string) (*EvolutionChain, error) {
	var chain EvolutionChain
	if err := c.get(ctx, chainURL, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

func (c *Client) Ability(ctx context.Context, name string) (*Ability, error) {
	var a Ability
	if err := c.get(ctx, c.resourceURL("ability", name), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Move(ctx context.Context, name string) (*Move, error) {
	var m Move
	if err := c.get(ctx, c.resourceURL("move", name), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) resourceURL(kind, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, kind, url.PathEscape(strings.ToLower(strings.TrimSpace(key))))
}
