// Package services contains the implementation of all services used by the web server.
//
// The services are responsible for loading and validating scene documents, and anything else that is not strictly HTTP-related.
// The services are injected into the web server, and are used to handle requests dispatched by it.
//
// Current services include:
//   - SceneService:
//     Resolves the configured scene sources for the /scene and /event routes, builds fresh documents per request,
//     and can preflight every source at startup in strict mode.
package services
