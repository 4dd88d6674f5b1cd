// Package models defines the core domain models for Splitnest.
//
// # Models
//
//   - User: registered account; the identity behind payers and shares
//   - Expense: a shared expense with its split type and total amount
//   - ExpenseShare: one participant's portion of an expense
//
// # Design principles
//
//  1. **Money is decimal**: all monetary fields use shopspring/decimal at
//     2 decimal places; float64 is never used for amounts.
//  2. **Immutable expenses**: expenses and their shares are created together
//     in one transaction and never mutated afterwards.
//  3. **Avoid circular references**: relationships use ID strings, not
//     pointers.
package models
