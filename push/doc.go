// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package push delivers scheduled notifications through OneSignal.

# Dispatcher Interface

Consumers depend on the Dispatcher interface, not the concrete client:

	type Dispatcher interface {
		Schedule(ctx context.Context, n Notification) (Receipt, error)
	}

Tests substitute a fake; production wires OneSignalClient.

# Scheduling

A Notification addresses specific devices (OneSignal player IDs), carries
a title, body, and action buttons, and a SendAfter time at which the
provider should deliver it:

	receipt, err := client.Schedule(ctx, push.Notification{
		PlayerIDs: []string{playerID},
		Title:     "Still mixing?",
		Body:      "It's been 8 min. Keep going or hand over?",
		Buttons:   buttons,
		SendAfter: time.Now().Add(8 * time.Minute),
	})

SendAfter is sent as RFC 3339 in UTC. iOS badge counts increase by one
per notification.

# Errors

Transport failures are returned as wrapped errors. A non-2xx provider
response is returned as *StatusError with the provider's status code and
response body preserved verbatim, so HTTP callers can pass the provider's
verdict through unchanged.
*/
package push
