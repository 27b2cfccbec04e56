// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RepositoryConnector: Queries and edits tasks in a remote repository
//   - IssueService: Talks to one GitHub issue API (legacy v2 or REST v3)
//   - IssueServiceFactory: Selects the IssueService for a repository
//   - RepositoryStore: Task repository persistence
//   - CredentialsStore: Repository credentials persistence
//   - QueryStore: Saved query persistence
//   - TaskStore: Local task list persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CredentialsProviderFactory: Without it, every repository is anonymous.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
