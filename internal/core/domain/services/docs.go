// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the back-office system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionValidator: Checks a requested status move against the
//     transition graph and its explanation and scanning gates
//   - EffectPlanner: Turns a status's action flags into the ordered list of
//     external effects to execute on commit
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
