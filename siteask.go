// Package siteask answers questions about a website by walking it with the
// help of a language model. It fetches a page, reduces it to essential
// content, asks the model to answer each pending question or suggest a link
// that likely holds the answer, and follows those suggestions until every
// question is answered or the iteration budget runs out.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, goquery/, rod/).
package siteask
