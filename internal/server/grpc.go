// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     server
// Description: gRPC binding of the script service (blaze.Script) using
//              google.protobuf.Struct messages
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ScriptServiceName is the fully qualified gRPC service name
const ScriptServiceName = "blaze.Script"

// Full method names
const (
	MethodLex   = "/" + ScriptServiceName + "/Lex"
	MethodParse = "/" + ScriptServiceName + "/Parse"
)

// ScriptServer is the server API for the blaze.Script service
type ScriptServer interface {
	Lex(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// grpcScript adapts ScriptService to ScriptServer
type grpcScript struct {
	svc *ScriptService
}

// RegisterScriptServer registers the script service on a gRPC server
func RegisterScriptServer(s grpc.ServiceRegistrar, svc *ScriptService) {
	s.RegisterService(&scriptServiceDesc, &grpcScript{svc: svc})
}

func (g *grpcScript) Lex(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, err
	}
	resp, err := g.svc.Lex(ctx, req)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

func (g *grpcScript) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, err
	}
	resp, err := g.svc.Parse(ctx, req)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

var scriptServiceDesc = grpc.ServiceDesc{
	ServiceName: ScriptServiceName,
	HandlerType: (*ScriptServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Lex", Handler: scriptLexHandler},
		{MethodName: "Parse", Handler: scriptParseHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blaze/script.proto",
}

func scriptLexHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScriptServer).Lex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLex}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScriptServer).Lex(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func scriptParseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScriptServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodParse}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScriptServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ScriptClient calls the blaze.Script service
type ScriptClient struct {
	cc grpc.ClientConnInterface
}

// NewScriptClient creates a client on an existing connection
func NewScriptClient(cc grpc.ClientConnInterface) *ScriptClient {
	return &ScriptClient{cc: cc}
}

// Lex calls blaze.Script/Lex
func (c *ScriptClient) Lex(ctx context.Context, req *Request, opts ...grpc.CallOption) (*Response, error) {
	return c.invoke(ctx, MethodLex, req, opts...)
}

// Parse calls blaze.Script/Parse
func (c *ScriptClient) Parse(ctx context.Context, req *Request, opts ...grpc.CallOption) (*Response, error) {
	return c.invoke(ctx, MethodParse, req, opts...)
}

func (c *ScriptClient) invoke(ctx context.Context, method string, req *Request, opts ...grpc.CallOption) (*Response, error) {
	in, err := toStruct(req)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	var resp Response
	if err := fromStruct(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// requestFromStruct reads {source, source_label} from a Struct
func requestFromStruct(in *structpb.Struct) (*Request, error) {
	fields := in.GetFields()

	source, ok := fields["source"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "field 'source' is required")
	}
	if _, isString := source.GetKind().(*structpb.Value_StringValue); !isString {
		return nil, status.Error(codes.InvalidArgument, "field 'source' must be a string")
	}

	req := &Request{Source: source.GetStringValue()}
	if label, ok := fields["source_label"]; ok {
		if _, isString := label.GetKind().(*structpb.Value_StringValue); !isString {
			return nil, status.Error(codes.InvalidArgument, "field 'source_label' must be a string")
		}
		req.SourceLabel = label.GetStringValue()
	}
	return req, nil
}

// toStruct converts any JSON-encodable value into a Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode message: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode message: %v", err)
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode message: %v", err)
	}
	return s, nil
}

// fromStruct decodes a Struct into v through its JSON form
func fromStruct(s *structpb.Struct, v interface{}) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return status.Errorf(codes.Internal, "decode message: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.Internal, "decode message: %v", err)
	}
	return nil
}
