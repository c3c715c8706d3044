// Package persistence connects the research tool to its document store
// (Firestore). The connection is optional: the config manager calls
// [FirestoreConnector.Connect] only when a project id is configured and
// carries on without a backend when it fails.
package persistence
