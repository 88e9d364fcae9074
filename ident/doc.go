/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package ident provides validated Norwegian identifiers: national identity numbers
// (fødselsnummer and d-nummer, see Fnr) and organisation numbers (see Orgnr).
//
// Both types can be created only from a valid value, so a non-zero Fnr or Orgnr is always valid.
// They are encoded as plain strings in JSON, YAML and text formats, and decoding validates the value.
package ident
