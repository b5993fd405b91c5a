// Package web встраивает клиентский помощник авторизации.
package web

import "embed"

// FS содержит auth.js.
//
//go:embed auth.js
var FS embed.FS
