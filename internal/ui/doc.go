// Package ui provides the session's user-facing collaborators.
//
// Notices is the fallback: it announces every request it cannot serve and
// stays silent on lifecycle notifications. Terminal serves logins and
// password changes on a terminal and prints download and upload URLs.
// Console is a plugin that prints the events addressed to it.
package ui
