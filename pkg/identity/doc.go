/*
Package identity resolves display names to acting roles.

A client profile stores at most one live tutor profile. A user whose
display name matches that profile acts as the tutor in every operation;
anyone else acts as a student. An explicitly supplied role always wins over
resolution, matching the consumer flow where a signed-in user carries a
role and anonymous flows fall back to the stored profile.

Display names are the join key throughout the workflow records. That is a
known correctness gap (two users sharing a name collide); this package is
the single seam where a stable user ID can replace the name.
*/
package identity
