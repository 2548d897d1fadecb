// Package atlas implements the client and parsers for the IARC Atlas of
// Colposcopy website.
//
// The site serves a paginated listing of clinical cases filtered by final
// diagnosis, each row linking to a detail page with demographic fields,
// diagnostic summaries and an ordered image gallery. Neither page exposes
// a stable schema: extraction relies on positional conventions (the
// second and third styled labels are age and HPV status), literal label
// text, and nearest-following-element rules over the raw node tree.
//
// Every extraction rule degrades independently. Missing markup yields an
// empty or placeholder field value, never an error; transport failures
// are the only errors this package produces.
package atlas
