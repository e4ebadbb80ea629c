// Package plan resolves the identifier plan of a batch: the new UID of every
// dashboard that is converted for collectors.
//
// Resolution pipeline:
//  1. Scan the input folder → inventory (UIDs and folder classes)
//  2. Load the mapping file → collector keys and the global key
//  3. Seed the issued set with every UID already in the batch
//  4. Allocate, in scan order, one UID per merged dashboard and one UID per
//     separate dashboard and collector, threading the issued set
//
// The converters then look up old → new UIDs to rename dashboards and to
// rewrite dashboard links.
package plan
