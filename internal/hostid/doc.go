// Provides the invoking host identity used to mirror the user inside images.
//
// The identity is resolved once per invocation and injected into the
// Dockerfile builder as a plain value, keeping the synthesis logic free of
// host lookups.
package hostid
