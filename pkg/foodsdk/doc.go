/*
Package foodsdk is a Go client for the FoodSpot API.

# Overview

A Client stands in for one browser. The session cookie set by the server is
kept in the client's cookie jar and sent on every request, and refreshed
cookies replace it transparently.

	client := foodsdk.NewClient("http://localhost:8080")

	_, err := client.RegisterUser(ctx, foodsdk.RegisterUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})

	session, err := client.Login(ctx, foodsdk.LoginRequest{
		Email:    "ana@example.com",
		Password: "correct horse",
	})

# Surfaces

The consumer app and the business console are separate surfaces, each for one
kind of account. EnterSurface checks the signed-in role before the surface is
used:

	id, err := client.EnterSurface(ctx, foodsdk.SurfaceBusinessConsole)
	var mismatch *foodsdk.RoleMismatchError
	if errors.As(err, &mismatch) {
		// The client is now signed out. Send the user to mismatch.LoginPath.
	}

The client moves between these states:

	Unauthenticated --login--> AuthenticatedUser | AuthenticatedBusiness
	Authenticated*  --EnterSurface, wrong role--> RoleMismatch --logout--> Unauthenticated
	any             --logout, expiry or 401--> Unauthenticated

These checks only keep the client honest. The server enforces roles on every
request regardless.

# Errors

Non-2xx responses are returned as *APIError carrying the server's error code.
Requests are checked with their Validate method before they are sent, and
failures are returned as *ValidationError without a round trip.
*/
package foodsdk
