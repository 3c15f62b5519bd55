// Package ui is the Bubble Tea front end of the heroes client.
//
// The AppModel switches between three screens (dashboard, heroes list, hero
// detail) addressed by Route paths, keeps a History for going back, draws
// modal Overlays on top, and renders the message log under every screen.
// Global commands hang off a spacemacs-style SPC leader (see KeybindRegistry).
//
// Views never see errors: every call goes through heroapi.Service, which
// logs failures to the message log and hands back a fallback value.
package ui
