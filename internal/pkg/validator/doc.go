// Package validator checks request and dependency structs against `validate`
// struct tags.
//
// Usecases depend on the Validator interface; V10Validator implements it with
// go-playground/validator v10 and English messages keyed by snake_case field
// names, matching the JSON request bodies.
package validator
