package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/coursecopilot/copilot/internal/client/api"
	"github.com/coursecopilot/copilot/internal/client/repositories/session"
	"github.com/coursecopilot/copilot/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and authenticates against the
// backend. On success the bearer token is persisted so the next run starts
// logged in.
//
// If the server is unreachable and a token survives from a previous session,
// the client stays logged in and drops to offline mode: the local mirror
// serves reads until connectivity returns.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) && a.loggedIn {
			log.Printf("Server unavailable, continuing with cached session")
			a.userName = userName
			a.setMode(ModeOffline)
			return nil
		}
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	if err := a.repos.Session.Set(ctx, session.KeyToken, []byte(token)); err != nil {
		log.Printf("warning: session not persisted: %s", err.Error())
	}

	a.userName = userName
	a.loggedIn = true
	a.setMode(ModeOnline)
	log.Printf("Login successfull")
	return nil
}

// Logout wipes the persisted session and the in-memory token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.repos.Session.Clear(ctx); err != nil {
		return err
	}
	a.client.SetToken("")
	a.loggedIn = false
	a.userName = ""
	return nil
}
