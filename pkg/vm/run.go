/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package vm

import (
	"encoding/binary"
	"fmt"

	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
)

// run executes vm.chunk from vm.ip until an OpReturn or an error.
func (vm *VM) run() (InterpretResult, error) { // nolint:gocyclo,funlen
	for {
		if vm.DebugTraceExecution {
			vm.traceStack()
			vm.chunk.DisassembleInstruction(stdout, vm.ip)
		}

		op := bytecode.Opcode(vm.chunk.Code[vm.ip])
		vm.ip++

		switch op {
		case bytecode.OpConstant:
			vm.push(vm.readConstant())

		case bytecode.OpNil:
			vm.push(bytecode.NotFinal(bytecode.NilValue))

		case bytecode.OpTrue:
			vm.push(bytecode.NotFinal(bytecode.BoolValue(true)))

		case bytecode.OpFalse:
			vm.push(bytecode.NotFinal(bytecode.BoolValue(false)))

		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpMarkFinal:
			top := vm.pop()
			top.IsFinal = true
			vm.push(top)

		case bytecode.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(bytecode.NotFinal(bytecode.BoolValue(bytecode.Equal(a.Value, b.Value))))

		case bytecode.OpGreater:
			res, err := vm.numericComparison(func(a, b float64) bool { return a > b })
			if err != nil {
				return InterpretRuntimeError, err
			}
			vm.push(res)

		case bytecode.OpLess:
			res, err := vm.numericComparison(func(a, b float64) bool { return a < b })
			if err != nil {
				return InterpretRuntimeError, err
			}
			vm.push(res)

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return InterpretRuntimeError, err
			}

		case bytecode.OpSubtract:
			res, err := vm.numericBinary(func(a, b float64) float64 { return a - b })
			if err != nil {
				return InterpretRuntimeError, err
			}
			vm.push(res)

		case bytecode.OpMultiply:
			res, err := vm.numericBinary(func(a, b float64) float64 { return a * b })
			if err != nil {
				return InterpretRuntimeError, err
			}
			vm.push(res)

		case bytecode.OpDivide:
			res, err := vm.numericBinary(func(a, b float64) float64 { return a / b })
			if err != nil {
				return InterpretRuntimeError, err
			}
			vm.push(res)

		case bytecode.OpNot:
			v := vm.pop()
			vm.push(bytecode.NotFinal(bytecode.BoolValue(v.Value.IsFalsey())))

		case bytecode.OpNegate:
			v := vm.peek(0)
			if !v.Value.IsNumber() {
				return InterpretRuntimeError, vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(bytecode.NotFinal(bytecode.NumberValue(bytecode.NewNumber(-v.Value.Num.Float()))))

		case bytecode.OpPrint:
			v := vm.pop()
			fmt.Fprintln(stdout, v.Value.String())

		case bytecode.OpDefineGlobal:
			name := vm.readConstant()
			value := vm.pop()
			vm.env.DefineGlobal(nameHash(name.Value), value)

		case bytecode.OpGetGlobal:
			name := vm.readConstant()
			hash := nameHash(name.Value)
			value, ok := vm.env.GetGlobal(hash)
			if !ok {
				return InterpretRuntimeError, vm.runtimeError("Undefined variable '%s'.", name.Value.String())
			}
			vm.push(value)

		case bytecode.OpSetGlobal:
			name := vm.readConstant()
			hash := nameHash(name.Value)
			existing, ok := vm.env.GetGlobal(hash)
			if !ok {
				return InterpretRuntimeError, vm.runtimeError("Undefined variable '%s'.", name.Value.String())
			}
			if existing.IsFinal {
				return InterpretRuntimeError, vm.runtimeError(
					"Variable '%s' is final and cannot be modified.", name.Value.String())
			}
			vm.env.SetGlobal(hash, vm.peek(0).Value)

		case bytecode.OpGetLocal:
			slot := vm.chunk.Code[vm.ip]
			vm.ip++
			vm.push(vm.stack[slot])

		case bytecode.OpSetLocal:
			slot := vm.chunk.Code[vm.ip]
			vm.ip++
			if vm.stack[slot].IsFinal {
				return InterpretRuntimeError, vm.runtimeError("This variable is final and cannot be modified.")
			}
			vm.stack[slot].Value = vm.peek(0).Value

		case bytecode.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).Value.IsFalsey() {
				vm.ip += int(offset)
			}

		case bytecode.OpJump:
			offset := vm.readShort()
			vm.ip += int(offset)

		case bytecode.OpLoop:
			offset := vm.readShort()
			vm.ip -= int(offset)

		case bytecode.OpReturn:
			return InterpretOK, nil

		default:
			return InterpretRuntimeError, vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

// readConstant reads the one-byte constant-pool index at vm.ip, advances
// past it, and returns the referenced constant.
func (vm *VM) readConstant() bytecode.FinalValue {
	index := vm.chunk.Code[vm.ip]
	vm.ip++
	return vm.chunk.Constants[index]
}

// readShort reads the two-byte big-endian jump offset at vm.ip and
// advances past it.
func (vm *VM) readShort() uint16 {
	offset := binary.BigEndian.Uint16(vm.chunk.Code[vm.ip : vm.ip+2])
	vm.ip += 2
	return offset
}

// traceStack prints the current stack contents, top of stack rightmost,
// for DebugTraceExecution.
func (vm *VM) traceStack() {
	fmt.Fprint(stdout, "          ")
	for i := 0; i < vm.stackTop; i++ {
		fmt.Fprintf(stdout, "[ %v ]", vm.stack[i].Value)
	}
	fmt.Fprintln(stdout)
}

// nameHash returns the FNV-1a hash that identifies a global by name. name
// must be a string Value, as produced by the compiler's identifier
// constants.
func nameHash(name bytecode.Value) uint32 {
	return bytecode.HashBytes(name.AsString().Bytes)
}

// numericBinary pops two Number operands and combines them with op,
// reporting a runtime error if either operand isn't a Number.
func (vm *VM) numericBinary(op func(a, b float64) float64) (bytecode.FinalValue, error) {
	b := vm.peek(0)
	a := vm.peek(1)
	if !a.Value.IsNumber() || !b.Value.IsNumber() {
		return bytecode.FinalValue{}, vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	return bytecode.NotFinal(bytecode.NumberValue(bytecode.NewNumber(op(a.Value.Num.Float(), b.Value.Num.Float())))), nil
}

// numericComparison pops two Number operands and compares them with cmp,
// reporting a runtime error if either operand isn't a Number.
func (vm *VM) numericComparison(cmp func(a, b float64) bool) (bytecode.FinalValue, error) {
	b := vm.peek(0)
	a := vm.peek(1)
	if !a.Value.IsNumber() || !b.Value.IsNumber() {
		return bytecode.FinalValue{}, vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	return bytecode.NotFinal(bytecode.BoolValue(cmp(a.Value.Num.Float(), b.Value.Num.Float()))), nil
}

// add implements OpAdd: numeric addition for two Numbers, or concatenation
// for two Strings (producing a fresh interned string). Any other
// combination is a runtime error.
func (vm *VM) add() error {
	b := vm.peek(0)
	a := vm.peek(1)

	switch {
	case a.Value.IsNumber() && b.Value.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(bytecode.NotFinal(bytecode.NumberValue(bytecode.NewNumber(a.Value.Num.Float() + b.Value.Num.Float()))))
		return nil

	case a.Value.IsString() && b.Value.IsString():
		vm.pop()
		vm.pop()
		concatenated := a.Value.AsString().String() + b.Value.AsString().String()
		vm.push(bytecode.NotFinal(bytecode.StringValue(vm.env.Strings.Intern(concatenated))))
		return nil

	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}
