// Package client is the single HTTP pipeline every backend call goes
// through.
//
// # Overview
//
// HTTPClient owns the base path, the request timeout and a cookie jar (the
// credentials mode of the browser client). Before each request it reads the
// access token from the session store and sends it as a bearer credential.
// After each response it inspects the status:
//
//   - 2xx: passed through untouched.
//   - 401 / 403: the session store is cleared and the Navigator performs a
//     hard redirect to the login entry point; the call still fails with an
//     *APIError wrapping ErrUnauthorized or ErrForbidden.
//   - anything else: returned to the caller as an *APIError.
//
// # Error Handling
//
// Every failure is an *APIError that unwraps to one of ErrUnavailable,
// ErrUnauthorized, ErrForbidden, ErrValidation or ErrServer.
//
// # Encodings
//
// DoJSON sends and decodes JSON, Upload sends a multipart form with the file
// under the "file" field, and Download returns the raw payload together with
// the file name from Content-Disposition.
package client
