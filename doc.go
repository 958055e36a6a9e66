/* Package main: rpncalc -- a concurrent reverse polish notation calculator

Each line of input is a sequence of space separated integers, the operators
+ - * / and the quit command q (or Q):

	5 1 2 + 4 * + 3 -

Three actors share one locked region holding a queue of pending commands and
a stack of values:

	input    reads a line, tokenizes it, and appends all of its commands to
	         the queue in one critical section; then pauses
	worker   drains the whole queue, executing every command against the
	         stack in the order it was entered; then pauses
	display  pops every value off the stack, printing each on its own line
	         (top first); then pauses for twice as long by default

Arithmetic with too few operands does nothing. Division truncates toward
zero. Quitting exits the process immediately with status 0, regardless of
any queued commands or unprinted values.

Since the display pops what it prints, a result computed by one line is
usually gone before a later line could use it as an operand: "3 4 +"
followed later by "2 *" prints 7, and then nothing for the lone 2. This
is how the calculator behaves; results are meant to be consumed on the line
that computes them.

Faults are confined to the actor that raised them. An unrecognized token
ends the input actor. Division by zero ends the worker while it holds the
lock, which poisons the shared region: from then on every actor skips every
cycle, so the calculator stalls silently rather than crashing. Nothing is
printed about any of this unless debug logging is enabled.
*/
package main
