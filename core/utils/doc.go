// Package utils provides small conversion helpers shared by the error parser
// and the HTTP handlers, where values arrive loosely typed (decoded JSON,
// path parameters, query strings).
package utils
