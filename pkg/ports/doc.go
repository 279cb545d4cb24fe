/*
Package ports defines the narrow interfaces through which the workflow engine
talks to its external collaborators: the subject being managed, audit logging,
event delivery, the scoped unit of work and distributed locking.

The engine depends only on these contracts. Implementations live under
pkg/adapters (in-memory, Redis) or in the host application.
*/
package ports
