package content

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// BuildSchema reflects the authored document contract into a JSON schema for
// editor tooling. Required markers come from the jsonschema struct tags.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.ReflectFromType(reflect.TypeOf(Document{}))
	schema.Version = jsonschema.Version
	schema.Title = "growFortress Definition Tables"
	schema.Description = "Designer-authored hero, turret, enemy, fortress, relic, pillar, mastery, combo and synergy tables consumed by the simulation core."
	return schema
}
