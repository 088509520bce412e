package question

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/thesrcielos/exambuddy/internal/llm"
)

const schemaName = "multiple_choice_question"

var questionSchema = mustReflectSchema()

func mustReflectSchema() *llm.Schema {
	def, err := reflectDefinition[Question]()
	if err != nil {
		panic(fmt.Sprintf("question schema: %v", err))
	}
	return &llm.Schema{
		Name:        schemaName,
		Description: "A multiple-choice exam question with four options",
		Definition:  def,
	}
}

// reflectDefinition renders T as an inline JSON Schema object without
// $schema/$id keys, which the providers reject.
func reflectDefinition[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var def map[string]any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, err
	}
	delete(def, "$schema")
	delete(def, "$id")
	return def, nil
}
