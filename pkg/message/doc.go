/*
Package message implements the append-only message log and file uploads.

Sending a message appends it to the log, then annotates the parent
conversation: last-message preview (first 50 characters plus an ellipsis,
or "📎 file" for attachments), last-message time, and the receiving side's
unread counter. A message addressed to a conversation that does not exist
is still stored; only the annotation is skipped.

The system welcome message does not bump the unread counter: the
conversation it lands in is created with one student-side unread already
counted for it.

Uploads read the full byte stream into a base64 data URL record. The
caller then sends a file-type message referencing the record's name, type,
and size. Uploads are independent of each other; two concurrent uploads
each produce their own record.
*/
package message
