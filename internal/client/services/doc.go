// Package services holds the client's challenge-response flows and the
// session state they share.
//
// Each flow is an explicit state machine whose transitions are its only
// mutators:
//
//	RegistrationFlow  Editing -> Registered
//	LoginFlow         EmailEntered -> AwaitingPattern -> Authenticated
//	                  AwaitingPattern -> EmailEntered (Back)
//	RecoveryFlow      RequestingCode -> AwaitingReset -> Reset
//
// Flows receive the drawn pattern as capture.PatternChanged events from the
// screen's capture.Surface. A step that does not advance returns a
// *StepError whose Kind tells a local validation failure, a collaborator
// rejection and a transport failure apart; its Message is what the user
// sees.
//
// Flows guard their state with a mutex but never hold it across a
// collaborator call, so a second submission issued while the first is
// outstanding reaches the collaborator too.
package services
