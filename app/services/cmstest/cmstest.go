// Package cmstest provides an in-memory CMSClient for tests.
package cmstest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/google/uuid"
)

type Patch struct {
	ID  string
	Set map[string]any
}

// Client keeps documents as decoded JSON objects keyed by _id. Queries
// return every document of the requested $type ordered by _id.
type Client struct {
	mu      sync.Mutex
	docs    map[string]map[string]any
	Patches []Patch
	Creates []string
	// FailWrites makes any write to the listed ids fail with the given error.
	FailWrites map[string]error
}

var _ services.CMSClient = (*Client)(nil)

func New() *Client {
	return &Client{docs: map[string]map[string]any{}, FailWrites: map[string]error{}}
}

// Put stores documents as if they already existed in the dataset.
func (c *Client) Put(docs ...models.Document) {
	for _, doc := range docs {
		body, err := encode(doc)
		if err != nil {
			panic(err)
		}
		c.mu.Lock()
		c.docs[body["_id"].(string)] = body
		c.mu.Unlock()
	}
}

// Get returns the stored document or nil.
func (c *Client) Get(id string) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docs[id]
}

// Len counts the stored documents of a type.
func (c *Client) Len(docType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.docs {
		if d["_type"] == docType {
			n++
		}
	}
	return n
}

func (c *Client) Query(_ context.Context, query string, params map[string]any, out any) error {
	docType, _ := params["type"].(string)

	c.mu.Lock()
	var ids []string
	for id, d := range c.docs {
		if d["_type"] == docType {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var result []any
	for _, id := range ids {
		if strings.HasSuffix(query, ".slug.current") {
			slug, _ := c.docs[id]["slug"].(map[string]any)
			result = append(result, slug["current"])
			continue
		}
		result = append(result, c.docs[id])
	}
	c.mu.Unlock()

	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) Create(_ context.Context, doc models.Document) (string, error) {
	return c.write(doc, func(exists bool) (bool, error) {
		if exists {
			return false, services.ErrConflict
		}
		return true, nil
	})
}

func (c *Client) CreateIfNotExists(_ context.Context, doc models.Document) (string, error) {
	return c.write(doc, func(exists bool) (bool, error) { return !exists, nil })
}

func (c *Client) CreateOrReplace(_ context.Context, doc models.Document) (string, error) {
	return c.write(doc, func(bool) (bool, error) { return true, nil })
}

func (c *Client) write(doc models.Document, decide func(exists bool) (bool, error)) (string, error) {
	body, err := encode(doc)
	if err != nil {
		return "", err
	}
	id := body["_id"].(string)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.FailWrites[id]; err != nil {
		return "", fmt.Errorf("create %s: %w", id, err)
	}
	_, exists := c.docs[id]
	store, err := decide(exists)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", id, err)
	}
	if store {
		c.docs[id] = body
		c.Creates = append(c.Creates, id)
	}
	return id, nil
}

func (c *Client) Patch(_ context.Context, id string, set map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.FailWrites[id]; err != nil {
		return fmt.Errorf("patch %s: %w", id, err)
	}
	doc, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("patch %s: %w", id, &services.APIError{StatusCode: http.StatusNotFound, Body: "document not found"})
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	for k, v := range decoded {
		doc[k] = v
	}
	c.Patches = append(c.Patches, Patch{ID: id, Set: decoded})
	return nil
}

func encode(doc models.Document) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["_type"] = doc.DocumentType()
	if id, _ := body["_id"].(string); id == "" {
		body["_id"] = uuid.NewString()
	}
	return body, nil
}
