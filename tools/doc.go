// Package tools provides the builtin tool set: one representative tool per
// category, built on the toolbridge tool contract.
//
// The bodies are intentionally small; they exist to exercise the contract
// (validation, defaults, enums, error conversion) and to give a server
// something useful to expose out of the box. Swap in richer implementations
// by registering tools of the same names.
package tools
