package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// ComponentName is the components/schemas key of the submission schema.
	ComponentName = "FormSubmission"

	ExtensionFieldType     = "x-field-type"
	ExtensionFieldUID      = "x-field-uid"
	ExtensionAcceptedTypes = "x-accepted-types"
	ExtensionMaxSize       = "x-max-size-mb"
)

// ErrDuplicateProperty is returned when two input fields share a name.
var ErrDuplicateProperty = errors.New("schema: duplicate field name")

// Option customises a Generator.
type Option func(*Generator)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		if title != "" {
			g.title = title
		}
	}
}

// WithVersion sets the document version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		if version != "" {
			g.version = version
		}
	}
}

// WithPath sets the submission endpoint path.
func WithPath(path string) Option {
	return func(g *Generator) {
		if path != "" {
			g.path = path
		}
	}
}

// Generator builds submission schemas from field trees.
type Generator struct {
	title   string
	version string
	path    string
}

// New returns a Generator applying the provided options.
func New(options ...Option) *Generator {
	g := &Generator{title: "Form submission", version: "1.0.0", path: "/submissions"}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Submission returns the object schema describing a submission of fields.
// Headings and paragraphs carry no value and are skipped; fields nested in
// containers and tables become top-level properties.
func (g *Generator) Submission(fields []*model.Field) (*openapi3.Schema, error) {
	object := openapi3.NewObjectSchema()
	object.Title = g.title
	var err error
	model.Walk(fields, func(field *model.Field, _ int) bool {
		if field.Type.IsStatic() || field.Container != nil || field.Table != nil {
			return true
		}
		name := strings.TrimSpace(field.Name)
		if _, exists := object.Properties[name]; exists {
			err = fmt.Errorf("%w: %q", ErrDuplicateProperty, name)
			return false
		}
		object.WithProperty(name, propertyFor(field))
		if field.Required {
			object.Required = append(object.Required, name)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return object, nil
}

// Document wraps the submission schema in an OpenAPI document with a single
// POST operation accepting it.
func (g *Generator) Document(fields []*model.Field) (*openapi3.T, error) {
	submission, err := g.Submission(fields)
	if err != nil {
		return nil, err
	}
	ref := &openapi3.SchemaRef{Ref: "#/components/schemas/" + ComponentName, Value: submission}

	operation := openapi3.NewOperation()
	operation.OperationID = "submitForm"
	operation.Summary = "Submit " + g.title
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref),
	}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(204, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission accepted")}),
	)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: g.title, Version: g.version},
		Paths:   openapi3.NewPaths(openapi3.WithPath(g.path, &openapi3.PathItem{Post: operation})),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{ComponentName: openapi3.NewSchemaRef("", submission)},
		},
	}, nil
}

// Validate builds the document for fields and checks it with kin-openapi.
func (g *Generator) Validate(ctx context.Context, fields []*model.Field) error {
	doc, err := g.Document(fields)
	if err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("schema: validate: %w", err)
	}
	return nil
}

// Marshal renders doc as indented JSON or YAML.
func Marshal(doc *openapi3.T, format codec.Format) ([]byte, error) {
	switch format {
	case codec.FormatJSON, "":
		raw, err := json.MarshalIndent(doc, "", codec.Indent)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal json: %w", err)
		}
		return raw, nil
	case codec.FormatYAML:
		// JSON is valid YAML; decoding it into a node keeps key order.
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal yaml: %w", err)
		}
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("schema: marshal yaml: %w", err)
		}
		blockStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("schema: marshal yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", codec.ErrUnknownFormat, format)
	}
}

func propertyFor(field *model.Field) *openapi3.Schema {
	var property *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		property = openapi3.NewFloat64Schema()
	case model.FieldTypeEmail:
		property = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeCheckbox:
		item := openapi3.NewStringSchema()
		if options := choiceOptions(field); len(options) > 0 {
			item.WithEnum(options...)
		}
		property = openapi3.NewArraySchema().WithItems(item)
		property.UniqueItems = true
	case model.FieldTypeSelect, model.FieldTypeRadio:
		property = openapi3.NewStringSchema()
		if options := choiceOptions(field); len(options) > 0 {
			property.WithEnum(options...)
		}
	case model.FieldTypePhoto:
		property = openapi3.NewStringSchema()
		property.Pattern = "^data:"
		property.Extensions = map[string]any{}
		if field.Photo != nil {
			if field.Photo.AcceptedTypes != "" {
				property.Extensions[ExtensionAcceptedTypes] = field.Photo.AcceptedTypes
			}
			if field.Photo.MaxSize > 0 {
				property.Extensions[ExtensionMaxSize] = field.Photo.MaxSize
			}
		}
	default:
		property = openapi3.NewStringSchema()
	}
	property.Title = field.Label
	if field.Placeholder != "" {
		property.Description = field.Placeholder
	}
	if property.Extensions == nil {
		property.Extensions = map[string]any{}
	}
	property.Extensions[ExtensionFieldType] = string(field.Type)
	property.Extensions[ExtensionFieldUID] = field.UID
	return property
}

func choiceOptions(field *model.Field) []any {
	if field.Choice == nil {
		return nil
	}
	out := make([]any, 0, len(field.Choice.Options))
	for _, option := range field.Choice.Options {
		out = append(out, option)
	}
	return out
}

func blockStyle(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode {
		node.Tag = node.ShortTag()
	}
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
