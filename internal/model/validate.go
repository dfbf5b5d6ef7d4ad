package model

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("schema validation failed")

const resumeSchemaURL = "http://resume-builder/schemas/resume.schema.json"

type compiled struct {
	request *gojsonschema.Schema
	update  *gojsonschema.Schema
	saved   *gojsonschema.Schema
	resume  *gojsonschema.Schema
}

var (
	schemasOnce sync.Once
	schemas     compiled
	schemasErr  error
)

func load() (compiled, error) {
	schemasOnce.Do(func() {
		schemas, schemasErr = compile()
	})
	return schemas, schemasErr
}

func compile() (compiled, error) {
	read := func(name string) (gojsonschema.JSONLoader, error) {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, err
		}
		return gojsonschema.NewBytesLoader(b), nil
	}

	var c compiled
	for _, s := range []struct {
		file string
		dst  **gojsonschema.Schema
	}{
		{"request.schema.json", &c.request},
		{"update.schema.json", &c.update},
		{"saved.schema.json", &c.saved},
		{"resume.schema.json", &c.resume},
	} {
		resume, err := read("resume.schema.json")
		if err != nil {
			return c, err
		}
		sl := gojsonschema.NewSchemaLoader()
		if s.file != "resume.schema.json" {
			if err := sl.AddSchema(resumeSchemaURL, resume); err != nil {
				return c, fmt.Errorf("add resume schema: %w", err)
			}
		}
		root, err := read(s.file)
		if err != nil {
			return c, err
		}
		schema, err := sl.Compile(root)
		if err != nil {
			return c, fmt.Errorf("compile %s: %w", s.file, err)
		}
		*s.dst = schema
	}
	return c, nil
}

// ValidateRequest checks a render/export/save request body.
func ValidateRequest(raw []byte) error {
	c, err := load()
	if err != nil {
		return err
	}
	return validate(c.request, raw)
}

// ValidateUpdate checks a saved-resume update body.
func ValidateUpdate(raw []byte) error {
	c, err := load()
	if err != nil {
		return err
	}
	return validate(c.update, raw)
}

// ValidateResume checks a bare ResumeData document, as read by the CLI.
func ValidateResume(raw []byte) error {
	c, err := load()
	if err != nil {
		return err
	}
	return validate(c.resume, raw)
}

// ValidateSavedList checks the persisted saved-resume list.
func ValidateSavedList(raw []byte) error {
	c, err := load()
	if err != nil {
		return err
	}
	return validate(c.saved, raw)
}

func validate(schema *gojsonschema.Schema, raw []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
