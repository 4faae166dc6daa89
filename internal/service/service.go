// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives bound
// inputs from handlers, re-checks the ranges it relies on before any store
// access, calls repositories, and maps store rows into result records with
// the model null policy. Services never call each other.
package service
