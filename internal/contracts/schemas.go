// Package contracts валидирует тела JSON-запросов по зашитым схемам
// до того, как они попадут в обработчики.
package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/schemas"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, чтобы работали `$ref`
	// между ними, затем компилируем.
	err := fs.WalkDir(schemas.SchemasFS, "requests", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			file, openErr := schemas.SchemasFS.Open(path)
			if openErr != nil {
				return openErr
			}
			defer file.Close()
			if addErr := compiler.AddResource(path, file); addErr != nil {
				log.Fatalf("failed to add schema resource %s: %v", path, addErr)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemas.SchemasFS, "requests", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			schema, compileErr := compiler.Compile(path)
			if compileErr != nil {
				log.Fatalf("could not compile schema %s: %v", path, compileErr)
			}
			compiledSchemas[generateKeyFromPath(path)] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath преобразует путь вида "requests/create-transaction.json"
// в ключ вида "CreateTransactionRequest".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "requests/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	caser := cases.Title(language.English)

	var b strings.Builder
	for _, p := range strings.Split(trimmed, "-") {
		b.WriteString(caser.String(p))
	}
	b.WriteString("Request")
	return b.String()
}

// ValidateRequest проверяет тело запроса по схеме с заданным ключом.
func ValidateRequest(name string, body []byte) error {
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema for request %q not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
