// Package store keeps the console's local mirror of the knowledge base in
// step with the backend.
//
// Every change goes through Reduce, a pure function from (State, Action) to
// State. Store wraps it with the five asynchronous operations (fetch all,
// fetch one, create, update, delete). Each operation moves through
// Pending, then Fulfilled or Rejected, and owns a loading flag and an error
// message in State. Nothing is applied before the backend confirms it.
//
// Calls of different operation classes are independent. A second call with
// the same operation and entry id while the first is outstanding fails with
// ErrInFlight and leaves the state untouched.
package store
