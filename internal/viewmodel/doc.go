/*
Package viewmodel holds the state shared between the UI and background API calls.

There are three cells, each behind its own mutex:
  - list: the short products in server order
  - detail: the product being viewed, also the only editing buffer
  - error: one user-visible message

Every operation spawns a goroutine and returns immediately. Results land in the
cells and the UI sees them on its next frame. Only UpdateProduct hands back a
Handle, so the caller can wait before refreshing the list.

A failure sets a fixed message per operation and never changes a data cell.
A later failure overwrites an unread message.
*/
package viewmodel
