package premiumize

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Body is a decoded JSON object as received from the service.
type Body map[string]any

// Validator checks a response body against an endpoint contract. On success
// it returns the normalized value the caller receives instead of the body.
// On failure the returned error lists the issues found.
type Validator interface {
	Validate(body Body) (any, error)
}

// IssueList is the failure returned by a Validator.
type IssueList []Issue

func (l IssueList) Error() string {
	parts := make([]string, 0, len(l))
	for _, issue := range l {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// Schema validates a body and decodes it into T.
//
// Validation runs in three stages: the JSON schema checks shape, required
// keys and primitive types; mapstructure decodes into T with weak typing so
// numeric strings become numbers; struct tags checked by validator/v10 cover
// the rules that only make sense on the typed value.
type Schema[T any] struct {
	name     string
	schema   *jsonschema.Schema
	defaults Body
}

var _ Validator = (*Schema[AccountInfo])(nil)

// NewSchema compiles a JSON schema document for T.
func NewSchema[T any](name, document string) (*Schema[T], error) {
	compiled, err := jsonschema.CompileString(name+".json", document)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return &Schema[T]{name: name, schema: compiled}, nil
}

// MustSchema is NewSchema for package level declarations.
func MustSchema[T any](name, document string) *Schema[T] {
	s, err := NewSchema[T](name, document)
	if err != nil {
		panic(err)
	}
	return s
}

// WithDefaults returns a copy of the schema that fills absent top-level keys
// before decoding.
func (s *Schema[T]) WithDefaults(defaults Body) *Schema[T] {
	cp := *s
	cp.defaults = defaults
	return &cp
}

// Validate implements Validator.
func (s *Schema[T]) Validate(body Body) (any, error) {
	if err := s.schema.Validate(map[string]any(body)); err != nil {
		return nil, schemaIssues(err)
	}

	input := make(map[string]any, len(body)+len(s.defaults))
	for k, v := range s.defaults {
		input[k] = v
	}
	for k, v := range body {
		input[k] = v
	}

	var out T
	if err := decodeNormalized(input, &out); err != nil {
		return nil, decodeIssues(err)
	}

	if err := structValidator().Struct(&out); err != nil {
		return nil, structIssues(err)
	}

	return out, nil
}

func schemaIssues(err error) IssueList {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return IssueList{{Reason: err.Error()}}
	}

	var issues IssueList
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			issues = append(issues, Issue{Location: e.InstanceLocation, Reason: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	return issues
}

func decodeIssues(err error) IssueList {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return IssueList{{Reason: err.Error()}}
	}
	issues := make(IssueList, 0, len(merr.Errors))
	for _, msg := range merr.Errors {
		issues = append(issues, Issue{Location: decodeLocation(msg), Reason: msg})
	}
	return issues
}

// decodedFieldName matches the quoted field name mapstructure puts in its
// messages, e.g. 'transfers[0].progress'.
var decodedFieldName = regexp.MustCompile(`'([^']*)'`)

// decodeLocation returns the JSON pointer of the field a mapstructure
// message is about, empty when the message names none.
func decodeLocation(msg string) string {
	m := decodedFieldName.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	return fieldPathToPointer(m[1])
}

func structIssues(err error) IssueList {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return IssueList{{Reason: err.Error()}}
	}
	issues := make(IssueList, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Location: namespaceToPointer(fe.Namespace()),
			Reason:   fmt.Sprintf("failed %q rule (value %v)", ruleName(fe), fe.Value()),
		})
	}
	return issues
}

func ruleName(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

// namespaceToPointer turns "FolderList.content[2].type" into "/content/2/type".
func namespaceToPointer(ns string) string {
	i := strings.IndexByte(ns, '.')
	if i < 0 {
		return ""
	}
	return fieldPathToPointer(ns[i+1:])
}

var fieldPathReplacer = strings.NewReplacer("[", "/", "]", "", ".", "/")

// fieldPathToPointer turns "content[2].type" into "/content/2/type".
func fieldPathToPointer(path string) string {
	if path == "" {
		return ""
	}
	return "/" + fieldPathReplacer.Replace(path)
}

func decodeNormalized(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(entryDecodeHook),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

var entryType = reflect.TypeOf(Entry{})

// entryDecodeHook resolves the folder content union on its "type" discriminant.
func entryDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != entryType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}

	kind, _ := m["type"].(string)
	switch EntryType(kind) {
	case EntryTypeFile:
		var f File
		if err := decodeNormalized(m, &f); err != nil {
			return nil, err
		}
		return Entry{Type: EntryTypeFile, File: &f}, nil
	case EntryTypeFolder:
		var f Folder
		if err := decodeNormalized(m, &f); err != nil {
			return nil, err
		}
		return Entry{Type: EntryTypeFolder, Folder: &f}, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", kind)
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}
