// This file contains response rendering for document routes. Documents are serialized to JSON by the model;
// YAML responses are produced from that JSON so both formats carry exactly the same data.

package web

import (
	"bytes"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/common"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/collection"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/scene"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/services"
)

const (
	MIMETextYAML        = "text/x-yaml"
	MIMEApplicationYAML = "application/yaml"
)

// negotiateFormat prefers an explicit ?format= over the Accept header. JSON is the default.
func negotiateFormat(c *fiber.Ctx, requested string) string {
	if requested != "" {
		return requested
	}
	switch c.Accepts(fiber.MIMEApplicationJSON, MIMETextYAML, MIMEApplicationYAML) {
	case MIMETextYAML, MIMEApplicationYAML:
		return common.FormatYAML
	default:
		return common.FormatJSON
	}
}

// sendDocument writes an already serialized JSON document in the requested format.
func sendDocument(c *fiber.Ctx, format string, body []byte) error {
	if format == common.FormatYAML {
		out, err := jsonToYAML(body)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, MIMETextYAML)
		return c.Status(fiber.StatusOK).Send(out)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

// cacheControl derives the caching hint of a scene from its access model. Only a static view may be cached, for
// its lifetime; every other document is revalidated on each fetch.
func cacheControl(sc *scene.Scene) string {
	if services.AccessModel(sc) != collection.StaticView {
		return "no-cache"
	}
	return "max-age=" + strconv.FormatInt(int64(time.Duration(*sc.ExpiresIn)/time.Second), 10)
}

func jsonToYAML(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(yamlNumbers(doc))
}

// yamlNumbers replaces JSON numbers with int64 where they are integral, so packed colors stay integers.
func yamlNumbers(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			node[k] = yamlNumbers(child)
		}
		return node
	case []interface{}:
		for i, child := range node {
			node[i] = yamlNumbers(child)
		}
		return node
	case json.Number:
		if i, err := node.Int64(); err == nil {
			return i
		}
		if f, err := node.Float64(); err == nil {
			return f
		}
		return node.String()
	default:
		return node
	}
}
