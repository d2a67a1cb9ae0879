// Package client is the brokerdesk gateway to the brokerage REST API.
//
// # Overview
//
// HTTPClient exposes one method per remote endpoint: authentication,
// profiles, user administration, the policy catalogue, purchases, claims,
// claim documents, notifications, and the four product families (see
// Product). Document uploads go out as multipart/form-data; everything else
// is JSON. Every call
// that needs authentication carries "Authorization: Bearer <token>" taken
// from a TokenSource, plus an X-Request-ID used in logs.
//
// # Normalisation
//
// Payloads are decoded into private wire structs and converted to the
// canonical models types before they leave the package. Known server
// variations are folded here:
//   - activation flags reported as isActive or active, as bool, string or 0/1
//     (active is only read when isActive is absent; a null isActive is false);
//   - claim ids under claimId or id, owners under userId or user.id;
//   - purchases pointing at one of four nested policy objects;
//   - vehicle ids under vehicle_id or id;
//   - premium quotes as an object (vehicles) or a bare number.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the status and the server's
// message. APIError matches the sentinels ErrBadRequest, ErrUnauthorized,
// ErrNotFound and ErrUnavailable through errors.Is; transport failures match
// ErrUnavailable. Nothing is retried. A 401 or 403 on an authenticated call
// runs the unauthorized handler, except a 403 from the role-restricted
// document endpoints, which only refuses that one call.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every method honours ctx; cancelling
// it aborts the request in flight.
package client
