package client

// Version is the SDK version reported in the User-Agent header.
const Version = "0.3.0"
