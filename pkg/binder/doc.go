/*
Package binder serializes workflow access to stored subjects.

A Binder pairs a workflow Factory with a SubjectStore. Do loads the subject,
binds it to a fresh Workflow and runs the caller's function while holding a
per-subject lock, so two goroutines cannot race the same subject through the
transition pipeline. Plug in a distributed Locker (see pkg/adapters/redis) to
extend the exclusion across processes.
*/
package binder
