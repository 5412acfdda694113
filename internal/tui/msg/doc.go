// Package msg defines the messages exchanged between the TUI components and
// the command factories that produce them.
//
// Components never call each other directly. The search box emits
// [SubmitMsg], the result list emits [UserSelectedMsg], and fetches started
// by [FetchSearch] and [FetchProfile] come back as [SearchResultMsg] and
// [ProfileResultMsg] carrying the request sequence they were issued with.
package msg
