package asrest

import (
	"encoding/xml"
	"fmt"
)

// TypeAuthorizationRequired is the Type value the server uses for
// authentication failures, including CRV1 challenges.
const TypeAuthorizationRequired = "Authorization Required"

// ErrorDocument is the structured XML error body returned by the Access
// Server REST API on failed requests:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<Error>
//	  <Type>Authorization Required</Type>
//	  <Synopsis>REST method failed</Synopsis>
//	  <Message>CRV1:R,E:AgAA...:dXNlcg==:Enter your token</Message>
//	</Error>
//
// The client returns the decoded document as the error value of a failed
// fetch so the download classifier can inspect Type and Message. Synopsis is
// decoded for completeness but carries no protocol meaning.
type ErrorDocument struct {
	XMLName  xml.Name `xml:"Error"`
	Type     string   `xml:"Type"`
	Synopsis string   `xml:"Synopsis"`
	Message  string   `xml:"Message"`

	// Status is the HTTP status code of the response that carried the
	// document. Not part of the wire format.
	Status int `xml:"-"`
}

// Error implements the error interface.
func (e *ErrorDocument) Error() string {
	return fmt.Sprintf("server returned %d, %s: %s", e.Status, e.Type, e.Message)
}

// decodeErrorDocument parses body as an error document. Returns nil when the
// body is not XML or does not carry both Type and Message; such responses
// must not be interpreted as protocol traffic.
func decodeErrorDocument(body []byte) *ErrorDocument {
	var doc ErrorDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil
	}
	if doc.Type == "" || doc.Message == "" {
		return nil
	}
	return &doc
}
