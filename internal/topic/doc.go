// Package topic implements commit classification, topic grouping and the
// sync planning that decides when a topic branch must be rebuilt.
//
// Commits opt into a topic by carrying an annotation line of the form
// "topic#name" in their message, optionally followed by a
// "topic-deps: topic#other, ..." line declaring ordering requirements on
// other topics. Annotations are tool metadata: they are stripped from the
// message before anything is pushed upstream.
package topic
