// Package server runs the local HTTP listener that receives the Spotify authorization redirect.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] uses
// [http.ServeMux] internally with method filtering. [Logging] records each request at debug level.
//
// # Spotify Callback
//
// [SpotifyCallback] serves /spotify-callback. Every outcome is a redirect to the landing page:
//
//	/?error=remote_not_configured       no remote store
//	/?error=spotify_auth_<error>        Spotify returned an error parameter
//	/?error=invalid_spotify_callback    missing code or state, or state is not the signed-in user
//	/?error=spotify_token_failed        code exchange failed
//	/?error=spotify_connection_failed   profile upsert failed
//	/?spotify=connected                 tokens stored
//
// The handler processes one callback only and reports the outcome once on [SpotifyCallback.Result].
//
// # Lifetime
//
// `mindflow spotify connect` starts a [Listener] on the configured host and port, opens the browser,
// waits for the result and shuts the listener down.
package server
