// Package session owns the signed-in identity and bearer token of one browser.
//
// A Store mirrors its state to a ports.SessionStorage and is the only
// component that touches that storage. Every session failure (expired token,
// corrupted storage, unreachable storage) degrades to the anonymous state
// inside this package; callers only ever observe authenticated or anonymous.
//
// Route gates are pure predicates over a Store and are evaluated again on
// every navigation.
package session
