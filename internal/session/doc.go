// Package session models the live binding between a document and its
// compute kernel.
//
// A session context exposes the current kernel (if any), its display
// name, and change notifications for kernel status transitions and
// kernel replacement. Toolbar controls subscribe to these notifications
// and unsubscribe when disposed.
package session
