// Package services wraps the external music provider and the built-in content catalogs.
//
// # Music Service
//
// [MusicService] abstracts a streaming provider the user can link. [SpotifyService] implements it with
// the OAuth2 authorization code flow from [oauth2.Config]:
//   - [SpotifyService.AuthURL] carries the signed-in user's id as state.
//   - [SpotifyService.Exchange] trades the callback code for tokens (client credentials in the header).
//   - [SpotifyService.Authenticate] installs stored tokens; tokens are not refreshed.
//
// API calls share a [rate.Limiter] so bursts of requests from the dashboard stay under Spotify's limits.
//
// # Catalogs
//
// [CuratedPlaylists] and [Stickers] expose the static catalogs from the models package with an
// optional category filter.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : Spotify rejected the access token
//   - [shared.ErrAPIRequest] : non-2xx response
package services
